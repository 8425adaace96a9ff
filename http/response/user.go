package response // import "github.com/bookdenapp/bookden/http/response"

import "github.com/bookdenapp/bookden/model"

type User struct {
	ID          int32      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        model.Role `json:"role"`
	PhotoURL    string     `json:"photoURL"`
	RowStatus   string     `json:"row_status"`
	CreatedTs   int64      `json:"created_ts"`
	LastLoginTs int64      `json:"last_login_ts"`
}

// UserResponse strips the password hash before a user leaves the
// server.
func UserResponse(user *model.User) *User {
	return &User{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		PhotoURL:    user.PhotoURL,
		RowStatus:   user.RowStatus.String(),
		CreatedTs:   user.CreatedTs,
		LastLoginTs: user.LastLoginTs,
	}
}

// UsersResponse maps a list of users.
func UsersResponse(users []*model.User) []*User {
	list := make([]*User, 0, len(users))
	for _, user := range users {
		list = append(list, UserResponse(user))
	}
	return list
}
