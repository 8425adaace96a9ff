package model // import "github.com/bookdenapp/bookden/model"

// Role is the type of a role.
type Role string

const (
	// RoleAdmin is the ADMIN role.
	RoleAdmin Role = "ADMIN"
	// RoleUser is the USER role.
	RoleUser Role = "USER"
)

func (e Role) String() string {
	switch e {
	case RoleAdmin:
		return "ADMIN"
	case RoleUser:
		return "USER"
	}
	return "USER"
}

type User struct {
	ID int32 `json:"id"`

	RowStatus RowStatus `json:"row_status"`
	CreatedTs int64     `json:"created_ts"`
	UpdatedTs int64     `json:"updated_ts"`

	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"password_hash"`
	PhotoURL     string `json:"photo_url"`
	LastLoginTs  int64  `json:"last_login_ts"`
}

type FindUser struct {
	ID        *int32     `json:"id"`
	RowStatus *RowStatus `json:"row_status"`
	Email     *string    `json:"email"`
	Name      *string    `json:"name"`
	Role      *Role      `json:"role"`

	// The maximum number of users to return.
	Limit *int
}

type UpdateUser struct {
	ID int32 `json:"id"`

	Role      *Role      `json:"role"`
	RowStatus *RowStatus `json:"row_status"`
	PhotoURL  *string    `json:"photo_url"`
}

type UserRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PhotoURL string `json:"photoURL"`
}

type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserStats is the per-user reading profile, upserted lazily on first
// read.
type UserStats struct {
	UserEmail     string `json:"userEmail"`
	AnnualGoal    int    `json:"annualGoal"`
	ReadingStreak int    `json:"readingStreak"`
	LastReadTs    int64  `json:"lastReadTs"`
	CreatedTs     int64  `json:"created_ts"`
	UpdatedTs     int64  `json:"updated_ts"`
}

const DefaultAnnualGoal = 50

type UpdateGoalRequest struct {
	Email   string `json:"email"`
	NewGoal int    `json:"newGoal"`
}
