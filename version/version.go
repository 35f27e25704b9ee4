package version

// AppVersion is the current application version, reported by the CLI and the API.
const AppVersion = "0.1.0"
