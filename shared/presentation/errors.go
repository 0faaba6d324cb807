package presentation

import (
	"fmt"
)

// MissingParameterError indica que falta un parámetro obligatorio de la petición.
type MissingParameterError struct {
	Name string
	Type string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("Required request parameter '%s' of type '%s' is missing", e.Name, e.Type)
}

func (e *MissingParameterError) ErrorType() string { return "MissingRequestParameter" }

// BodyDecodeError envuelve un fallo al leer o decodificar el cuerpo de la petición.
type BodyDecodeError struct {
	Err error
}

func (e *BodyDecodeError) Error() string {
	return fmt.Sprintf("failed to read request body: %v", e.Err)
}

func (e *BodyDecodeError) Unwrap() error { return e.Err }

func (e *BodyDecodeError) ErrorType() string { return "BodyDecodeError" }

// PanicError transporta el valor de un pánico recuperado en un handler.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap expone el valor si era un error, para que se clasifique como tal.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func (e *PanicError) ErrorType() string { return "PanicError" }
