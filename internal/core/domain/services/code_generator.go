package services

import (
	"fmt"
	"math/rand/v2"

	"bibdelivery/internal/core/domain/model/kernel"
)

// CodeGenerator produces the short numeric security codes that gate physical
// handoffs: the pickup PIN shown to the organizer and the delivery OTP shared
// with the customer.
type CodeGenerator interface {
	Generate() kernel.SecurityCode
}

// RandomCodeGenerator generates uniformly random 4-digit codes in 1000..9999.
type RandomCodeGenerator struct{}

// NewRandomCodeGenerator creates the reference code generator.
func NewRandomCodeGenerator() RandomCodeGenerator {
	return RandomCodeGenerator{}
}

// Generate implements CodeGenerator.
func (RandomCodeGenerator) Generate() kernel.SecurityCode {
	value := fmt.Sprintf("%04d", rand.IntN(9000)+1000) //nolint:gosec // codes are short-lived handoff secrets
	code, err := kernel.NewSecurityCode(value)
	if err != nil {
		// 1000..9999 always passes SecurityCode validation.
		panic(err)
	}
	return code
}
