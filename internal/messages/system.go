package messages

// System messages shared by capability seams.
const (
	SystemRequired        = "a system implementation is required"
	SystemHomeDirErrFmt   = "resolving home directory: %w"
	SystemSymlinkOldEmpty = "symlink source must not be empty"
	SystemSymlinkNewEmpty = "symlink path must not be empty"
)
