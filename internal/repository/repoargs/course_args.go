package repoargs

type CreateCourse struct {
	Title       string
	Description string
	Category    string
	CreatedBy   string
}
