package repoargs

type RepositoryName string

const (
	UserRepoName          RepositoryName = "user"
	PasswordResetRepoName RepositoryName = "password_reset"
	CourseRepoName        RepositoryName = "course"
)
