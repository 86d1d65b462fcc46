// Package params collects the extra environment handed to the signing tool.
//
// Variables come from three layers, later layers winning:
//
//  1. the env map in htmlsign.yaml
//  2. files named by --env-file, in .env format (parsed with godotenv)
//  3. --env KEY=VALUE flags
//
// Typical entries are GNUPGHOME, GPG_TTY or LANG. The variables are added
// to the signing tool's process only; htmlsign's own environment is not
// modified.
//
// # Example Usage
//
//	fileEnv, err := params.ParseEnvFile(content)
//	flagEnv, err := params.ParseKeyValuePairs([]string{"GNUPGHOME=/secure/gnupg"})
//	env := params.Merge(projectEnv, fileEnv, flagEnv)
//
// # Thread Safety
//
// All functions are safe for concurrent use.
package params
