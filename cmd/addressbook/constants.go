package main

// Valid export formats.
var validFormats = []string{"json", "csv", "markdown"}

// Valid output formats for listing commands.
var validOutputs = []string{"text", "json"}

// envFile is loaded from the project directory when present.
const envFile = ".env"
