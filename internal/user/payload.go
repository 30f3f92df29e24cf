package user

type ResolveRequest struct {
	AuthID    string `json:"authId" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}
