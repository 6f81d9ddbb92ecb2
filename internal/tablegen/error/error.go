package error

// ValidationError reports invalid input or catalog configuration. Fatal:
// the run aborts before the first request.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// AuthenticationError reports rejected credentials. Fatal: no further cell
// can succeed, so the whole run aborts.
type AuthenticationError string

func (e AuthenticationError) Error() string { return string(e) }

// TransportError reports a connection failure after retry exhaustion.
// Recoverable: the cell is skipped and the run continues.
type TransportError string

func (e TransportError) Error() string { return string(e) }

// MalformedResponseError reports a provider reply missing the expected
// numeric fields. Recoverable: the cell is skipped and the run continues.
type MalformedResponseError string

func (e MalformedResponseError) Error() string { return string(e) }

// Kind names the taxonomy class of err for failure records and logs.
func Kind(err error) string {
	switch err.(type) {
	case ValidationError:
		return "validation"
	case AuthenticationError:
		return "authentication"
	case TransportError:
		return "transport"
	case MalformedResponseError:
		return "malformed_response"
	default:
		return "unknown"
	}
}
