package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid. It is not configurable.
const TokenTTL = time.Hour

// localsUser is the fiber locals key holding the verified identity.
const localsUser = "user"

var ErrInvalidToken = fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)

type Auth struct {
	Secret string
	now    func() time.Time
}

func SetupAuth(secret string) Auth {
	return Auth{Secret: secret, now: time.Now}
}

func (a Auth) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

// IssueToken signs the identity claim. The email is the only required field.
func (a Auth) IssueToken(email, name string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", errors.New("required inputs are missing to generate token")
	}
	if a.Secret == "" {
		return "", errors.New("token secret is not configured")
	}

	now := a.clock()
	claims := jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	}
	if name != "" {
		claims["name"] = name
	}

	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}
	return tokenStr, nil
}

// VerifyToken accepts a raw token or a "Bearer <token>" value.
func (a Auth) VerifyToken(tokenString string) (dto.AuthResponse, error) {
	tokenString, err := ExtractBearer(tokenString)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.clock),
	)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return dto.AuthResponse{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		return dto.AuthResponse{}, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}
	name, _ := claims["name"].(string)
	exp, _ := claims["exp"].(float64)
	iat, _ := claims["iat"].(float64)

	return dto.AuthResponse{
		Email:  email,
		Name:   name,
		Iat:    iat,
		Expiry: exp,
	}, nil
}

// ExtractBearer strips an optional "Bearer " prefix.
func ExtractBearer(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", fmt.Errorf("%w: missing token", domain.ErrUnauthorized)
	}
	if strings.HasPrefix(strings.ToLower(header), "bearer") {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", fmt.Errorf("%w: invalid token format", domain.ErrUnauthorized)
		}
		return strings.TrimSpace(parts[1]), nil
	}
	return header, nil
}

func SetCurrentUser(ctx *fiber.Ctx, user dto.AuthResponse) {
	ctx.Locals(localsUser, user)
}

func GetCurrentUser(ctx *fiber.Ctx) (dto.AuthResponse, error) {
	claims, ok := ctx.Locals(localsUser).(dto.AuthResponse)
	if !ok {
		return dto.AuthResponse{}, fmt.Errorf("%w: missing auth user in context", domain.ErrUnauthorized)
	}
	return claims, nil
}
