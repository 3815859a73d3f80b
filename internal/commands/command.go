// Package commands holds the validated inputs for every engine
// mutation. Each command carries exactly what the operation needs and a
// Validate method that rejects it before any state is touched.
package commands

type Command interface {
	CommandType() string
	Validate() error
}
