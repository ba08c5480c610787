package internal

// Version is the current release of the ws binary.
const Version = "0.3.0"
