package jwt

import (
	"errors"
	"fmt"
	"kedaistock-backend/domain"
	"kedaistock-backend/internal/utils"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateTokenUser(userID string, role string, branchID string) string
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetClaimsByToken(token string) (UserClaims, error)
	}

	UserClaims struct {
		UserID   string
		Role     string
		BranchID string
	}

	jwtUserClaim struct {
		UserID   string `json:"user_id"`
		Role     string `json:"role"`
		BranchID string `json:"branch_id,omitempty"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func getSecretKey() string {
	utils.LoadConfig()
	secretKey := utils.GetConfig("JWT_SECRET")
	return secretKey
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
		issuer:    "KEDAISTOCK",
	}
}

func (j *jwtService) GenerateTokenUser(userID string, role string, branchID string) string {
	claims := jwtUserClaim{
		userID,
		role,
		branchID,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute * 120)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return tx
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetClaimsByToken(token string) (UserClaims, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return UserClaims{}, domain.ErrTokenExpired
		}
		return UserClaims{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return UserClaims{}, domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)

	return UserClaims{
		UserID:   claims.UserID,
		Role:     claims.Role,
		BranchID: claims.BranchID,
	}, nil
}
