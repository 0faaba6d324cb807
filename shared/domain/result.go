package domain

import (
	"errors"
	"fmt"
)

// Result expresa una operación que puede fallar sin recurrir a errores lanzados.
// El valor cero es un Failure sin mensaje.
type Result[T any] struct {
	value T
	ok    bool
	msg   string
	cause error
}

func Success[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

func Failure[T any](message string, cause error) Result[T] {
	return Result[T]{msg: message, cause: cause}
}

func (r Result[T]) IsSuccess() bool { return r.ok }

func (r Result[T]) IsFailure() bool { return !r.ok }

// Get devuelve el valor y true si es Success.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

// GetOrNil devuelve un puntero al valor, o nil si es Failure.
func (r Result[T]) GetOrNil() *T {
	if !r.ok {
		return nil
	}
	v := r.value
	return &v
}

func (r Result[T]) GetOrElse(def T) T {
	if !r.ok {
		return def
	}
	return r.value
}

// Message es el mensaje del Failure; vacío en Success.
func (r Result[T]) Message() string { return r.msg }

func (r Result[T]) Cause() error { return r.cause }

// Err convierte un Failure en error; nil en Success.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	if r.cause != nil {
		if r.msg == r.cause.Error() {
			return r.cause
		}
		return fmt.Errorf("%s: %w", r.msg, r.cause)
	}
	return errors.New(r.msg)
}

// Map transforma el valor de un Success; un Failure pasa sin cambios.
func Map[T, R any](r Result[T], fn func(T) R) Result[R] {
	if !r.ok {
		return Result[R]{msg: r.msg, cause: r.cause}
	}
	return Success(fn(r.value))
}

// FlatMap encadena una transformación que a su vez devuelve Result.
func FlatMap[T, R any](r Result[T], fn func(T) Result[R]) Result[R] {
	if !r.ok {
		return Result[R]{msg: r.msg, cause: r.cause}
	}
	return fn(r.value)
}

// Of ejecuta op y convierte tanto un error devuelto como un pánico en Failure.
func Of[T any](op func() (T, error)) (res Result[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			res = Failure[T](messageOf(err), err)
		}
	}()
	v, err := op()
	if err != nil {
		return Failure[T](messageOf(err), err)
	}
	return Success(v)
}

func messageOf(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unknown error"
}
