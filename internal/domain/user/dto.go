// internal/domain/user/dto.go
package user

// View is the client-facing shape of a user.
type View struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// CurrentUserResponse is the body of GET /api/auth/current-user. User is null
// when the request carries no valid session.
type CurrentUserResponse struct {
	IsAuthenticated bool  `json:"isAuthenticated"`
	User            *View `json:"user"`
}

func (u *User) ToView() *View {
	return &View{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Picture: u.Picture,
	}
}
