package handler

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime/types"
)

var validationSetup sync.Once

// NewRouter builds a gin engine with the user routes mounted under /api/v1.
func NewRouter(api *UserAPI) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	return RegisterRoutes(router, api)
}

// RegisterRoutes mounts the user routes on an existing engine.
func RegisterRoutes(router *gin.Engine, api *UserAPI) *gin.Engine {
	registerValidations()
	group := router.Group("/api/v1")
	group.GET("/users", api.FindByBirthDateRange)
	group.POST("/users", api.CreateUser)
	group.PUT("/users/:id", api.ReplaceUser)
	group.PATCH("/users/:id", api.PartialUpdateUser)
	group.DELETE("/users/:id", api.DeleteUser)
	return router
}

// registerValidations teaches the binding validator about the ISO date type,
// JSON field names for error reporting, and the past-date rule.
func registerValidations() {
	validationSetup.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if date, ok := field.Interface().(types.Date); ok {
				return date.Time
			}
			return nil
		}, types.Date{})
		_ = v.RegisterValidation("beforetoday", beforeToday)
	})
}

func beforeToday(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return value.Before(today)
}
