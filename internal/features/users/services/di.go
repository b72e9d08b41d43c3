package users_services

import (
	users_repositories "wedsync/internal/features/users/repositories"
)

var userRepository = &users_repositories.UserRepository{}
var secretKeyRepository = &users_repositories.SecretKeyRepository{}

var userService = NewUserService(userRepository, secretKeyRepository)

func GetUserService() *UserService {
	return userService
}
