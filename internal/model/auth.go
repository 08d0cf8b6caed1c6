package model

import "github.com/golang-jwt/jwt/v5"

// ClinicianClaims are JWT claims for clinician authentication
type ClinicianClaims struct {
	ClinicianID string `json:"clinicianId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for clinician login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token       string `json:"token"`
	ClinicianID string `json:"clinicianId"`
}
