package importerrors

import "fmt"

const (
	transportErrorTemplateConstant           = "%s failed with status %d: %s"
	transportErrorWithCauseTemplateConstant  = "%s failed: %s"
	transportErrorBareOperationTemplateConst = "%s failed"
)

// ConfigurationError reports operator-fixable problems such as missing settings,
// an absent Status field, an unresolved status name, or an unordered parent row.
type ConfigurationError struct {
	Message string
}

// Error describes the configuration problem.
func (configurationError ConfigurationError) Error() string {
	return configurationError.Message
}

// NewConfigurationError constructs a ConfigurationError from a formatted message.
func NewConfigurationError(messageTemplate string, templateArguments ...any) ConfigurationError {
	return ConfigurationError{Message: fmt.Sprintf(messageTemplate, templateArguments...)}
}

// NotFoundError reports a project lookup that resolved in neither the user nor
// the organization namespace.
type NotFoundError struct {
	Message string
}

// Error describes the missing resource.
func (notFoundError NotFoundError) Error() string {
	return notFoundError.Message
}

// NewNotFoundError constructs a NotFoundError from a formatted message.
func NewNotFoundError(messageTemplate string, templateArguments ...any) NotFoundError {
	return NotFoundError{Message: fmt.Sprintf(messageTemplate, templateArguments...)}
}

// TransportError reports a failed remote call: a non-success HTTP status, a
// service-level errors envelope, or an underlying network failure.
type TransportError struct {
	Operation  string
	StatusCode int
	Message    string
	Cause      error
}

// Error describes the failed remote operation.
func (transportError TransportError) Error() string {
	if transportError.StatusCode > 0 {
		return fmt.Sprintf(transportErrorTemplateConstant, transportError.Operation, transportError.StatusCode, transportError.Message)
	}
	if len(transportError.Message) > 0 {
		return fmt.Sprintf(transportErrorWithCauseTemplateConstant, transportError.Operation, transportError.Message)
	}
	if transportError.Cause != nil {
		return fmt.Sprintf(transportErrorWithCauseTemplateConstant, transportError.Operation, transportError.Cause.Error())
	}
	return fmt.Sprintf(transportErrorBareOperationTemplateConst, transportError.Operation)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (transportError TransportError) Unwrap() error {
	return transportError.Cause
}
