package uow

import "errors"

// Ошибки реестра репозиториев. Имя репозитория дописывается при заворачивании.
var (
	// ErrRepositoryNotRegistered - для имени нет фабрики.
	ErrRepositoryNotRegistered = errors.New("uow: no factory for repository")
	// ErrRepositoryAlreadyRegistered - имя уже занято другой фабрикой.
	ErrRepositoryAlreadyRegistered = errors.New("uow: repository name taken")
	// ErrInvalidRepositoryType - фабрика вернула не тот тип, что ждет вызывающий.
	ErrInvalidRepositoryType = errors.New("uow: unexpected repository type")
)
