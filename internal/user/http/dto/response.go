package dto

// DeleteUserResponse echoes the id of a deleted user.
type DeleteUserResponse struct {
	ID string `json:"id"`
}
