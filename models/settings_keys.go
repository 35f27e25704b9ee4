package models

// DefaultFormatKey is the database setting key for the server-side default output format.
const DefaultFormatKey = "default_format"

// DefaultOutputPathKey is the database setting key for the server-side default output path.
const DefaultOutputPathKey = "default_output_path"
