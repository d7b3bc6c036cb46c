package constants

// Version и PreCommitHash подставляются при сборке через
// -ldflags "-X github.com/Kargones/frontcheck/internal/constants.Version=...".
var (
	// Version - версия приложения
	Version = "dev"
	// PreCommitHash - хеш коммита сборки
	PreCommitHash = ""
)
