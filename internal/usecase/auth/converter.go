package auth

import "github.com/Rohang10/saas-copilot/internal/entity"

func toUserDTO(user *entity.User) entity.UserDTO {
	return entity.UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
