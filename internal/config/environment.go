package config

import (
	"strings"
)

type Environment int32

const (
	UNDEFINED_ENV Environment = iota
	LOCAL_ENV
	DEV_ENV
	UAT_ENV
	PROD_ENV
)

// StringToEnvironment accepts the short names used in app.env and their long forms.
func StringToEnvironment(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local", "":
		return LOCAL_ENV
	case "dev", "development":
		return DEV_ENV
	case "uat", "staging":
		return UAT_ENV
	case "prod", "production":
		return PROD_ENV
	default:
		return UNDEFINED_ENV
	}
}

func (e Environment) String() string {
	switch e {
	case LOCAL_ENV:
		return "local"
	case DEV_ENV:
		return "dev"
	case UAT_ENV:
		return "uat"
	case PROD_ENV:
		return "prod"
	default:
		return "undefined"
	}
}
