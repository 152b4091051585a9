// Package validation provides struct and programmatic validation.
//
// Struct tag validation (using the validator library) checks configuration
// structs and, when enabled on an injector, instances after their members
// are injected:
//
//	type Server struct {
//	    Port int    `inject:"int" named:"listen.port" validate:"min=1,max=65535"`
//	    Host string `inject:"string" named:"listen.host" validate:"required"`
//	}
//	err := validation.Validate(srv)
//
// Programmatic validation collects errors for plain arguments:
//
//	err := validation.New().
//	    Required("name", name).
//	    OneOf("format", format, []string{"json", "console"}).
//	    Validate()
package validation
