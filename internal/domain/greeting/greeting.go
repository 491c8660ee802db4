// Package greeting builds the greeting, info and health texts served by the API.
package greeting

// Fixed texts.
const (
	DefaultName = "World"

	ServiceName        = "Spring Boot Demo API"
	AppName            = "Spring Boot Demo Application"
	AppVersion         = "1.0.0"
	AppDescription     = "A simple Spring Boot application with Docker support."
	helloMessage       = "Hello from Spring Boot API!"
	helloNameSuffix    = " from Spring Boot API!"
	greetingPrefix     = "Greetings "
	greetingTerminator = "!"
)

// Hello returns the static hello message.
func Hello() string {
	return helloMessage
}

// HelloName interpolates name verbatim; no trimming or escaping.
func HelloName(name string) string {
	return "Hello " + name + helloNameSuffix
}

// Greet builds the greeting for name.
func Greet(name string) string {
	return greetingPrefix + name + greetingTerminator
}

// NameOrDefault returns *name when present, DefaultName otherwise.
// A present but empty name is kept as is.
func NameOrDefault(name *string) string {
	if name == nil {
		return DefaultName
	}
	return *name
}
