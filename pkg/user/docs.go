package user

import (
	"github.com/hotspot-events/hotspot/pkg/model"
	"github.com/hotspot-events/hotspot/pkg/token"
)

// swagger:parameters signUp
type _ struct {
	// SignUp request body parameter
	// in: body
	// required: true
	Body SignUpRequest
}

// swagger:parameters refreshToken
type _ struct {
	// Refresh token request body parameter. Note that this is optional and the refresh token can also be supplied using a cookie named "refreshToken"
	// in: body
	// required: false
	Body RefreshTokenRequest
}

// swagger:response Tokens
type _ struct {
	//in: body
	_ token.Tokens
}

// swagger:response User
type _ struct {
	//in: body
	_ model.User
}
