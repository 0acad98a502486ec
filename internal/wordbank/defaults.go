package wordbank

// DefaultWords seeds a bank that has never been persisted.
var DefaultWords = []string{
	"DEVOPS", "AGILE", "VERSION", "BRANCH", "GITHUB",
	"CHANGES", "FEATURES", "HOTFIX", "CONTINUOUS", "INTEGRATION",
	"DEPLOYMENT", "TESTING", "COMMIT", "SNAPSHOT", "CULTURE",
	"PIPELINE", "DOCKER", "SCRUM", "KANBAN", "MERGE",
}
