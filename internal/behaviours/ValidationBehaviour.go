package behaviours

import (
	"Staffline/internal/mediator"
	"Staffline/utils"
	"context"
	"reflect"
)

// ValidationBehaviour rejects struct requests that violate their validate tags
// before the handler runs.
func ValidationBehaviour(_ context.Context, request any, next mediator.Next) error {
	value := reflect.ValueOf(request)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}

	if value.Kind() == reflect.Struct {
		err := utils.ValidateDto(value.Interface())
		if err != nil {
			return err
		}
	}

	return next()
}
