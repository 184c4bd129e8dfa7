package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogin(t *testing.T) {
	expectedMap := map[string]string{"email": "email", "password": "***"}
	expected, _ := json.Marshal(expectedMap)
	loginReq := Login{Email: "email", Password: "password"}

	actual, _ := json.Marshal(loginReq)

	assert.EqualValues(t, expected, actual)
	assert.EqualValues(t, "password", loginReq.Password)
}

func TestRegister(t *testing.T) {
	expectedMap := map[string]string{
		"name":     "name",
		"email":    "email",
		"password": "***",
		"phone":    "phone",
	}
	registerReq := Register{Name: "name", Email: "email", Password: "password", Phone: "phone"}

	marshalled, _ := json.Marshal(registerReq)
	actualMap := map[string]string{}
	_ = json.Unmarshal(marshalled, &actualMap)

	assert.EqualValues(t, expectedMap, actualMap)
	assert.EqualValues(t, "password", registerReq.Password)
}
