package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fleetory/console/internal/gateway"
	"github.com/fleetory/console/internal/session"
)

// API groups the typed resource clients the way the dashboard grouped its
// endpoint modules. Everything goes through the one gateway client.
type API struct {
	Auth         *Auth
	Distributors *Distributors
	Drivers      *Drivers
	Products     *Products
	Orders       *Orders
	Requests     *Requests
}

func New(gw *gateway.Client, store session.Store) *API {
	return &API{
		Auth:         &Auth{gw: gw, store: store},
		Distributors: &Distributors{gw: gw},
		Drivers:      &Drivers{gw: gw},
		Products:     &Products{gw: gw},
		Orders:       &Orders{gw: gw},
		Requests:     &Requests{gw: gw},
	}
}

var validate = validator.New()

func init() {
	// Report on json tag instead of struct field name
	// Look at documentation of 'RegisterTagNameFunc' for more details
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// checkPayload validates a request payload before it reaches the wire,
// mirroring the form checks the dashboard ran before submit
func checkPayload(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make([]string, 0, len(errs))
	for _, fieldError := range errs {
		fields = append(fields, fieldError.Field()+" is invalid")
	}
	return fmt.Errorf("invalid request: %s", strings.Join(fields, ", "))
}

// envelope is the application level wrapper some endpoints nest inside a
// 2xx response. Checking it is the caller's job, not the gateway's.
type envelope[T any] struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func (e envelope[T]) unwrap() (T, error) {
	if e.Success != nil && !*e.Success {
		var zero T
		message := e.Message
		if message == "" {
			message = "request was not successful"
		}
		return zero, fmt.Errorf("backend rejected request: %s", message)
	}
	return e.Data, nil
}
