package ports

// BuildFileStore defines reading and atomically committing the build
// template being patched.
type BuildFileStore interface {
	// Read returns the file content, or an os.ErrNotExist-wrapping error
	// when the template is missing.
	Read(path string) (string, error)

	// Exists reports whether the template is present.
	Exists(path string) bool

	// Commit replaces the file content atomically (write to a sibling
	// temp file, then rename). On failure the original file is intact.
	Commit(path string, content string) error
}
