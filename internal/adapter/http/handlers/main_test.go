package handlers

import (
	"os"
	"testing"

	request "credito_tributario/internal/adapter/http/dto/request"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func TestMain(m *testing.M) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := request.RegisterValidations(v); err != nil {
			panic(err)
		}
	}
	os.Exit(m.Run())
}
