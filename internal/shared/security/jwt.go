package security

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SeatTokenTTL = 7 * 24 * time.Hour
	tokenIssuer  = "golden-ages"
)

var (
	ErrJWTSecretMissing = errors.New("JWT_SECRET is not set")
	ErrTokenMissing     = errors.New("token is empty")
)

// Claims 座位凭证。Uid 是座位表里的玩家 id，MatchID/Seat 只用于日志排查。
type Claims struct {
	Uid     int   `json:"uid"`
	MatchID int64 `json:"mid,omitempty"`
	Seat    int   `json:"seat"`
	jwt.RegisteredClaims
}

func secret() ([]byte, error) {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s), nil
	}
	return nil, ErrJWTSecretMissing
}

// IssueSeatToken 创建对局时给每个座位签发。
func IssueSeatToken(uid int, matchID int64, seat int) (string, error) {
	return issue(Claims{Uid: uid, MatchID: matchID, Seat: seat}, SeatTokenTTL)
}

func issue(c Claims, ttl time.Duration) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.Itoa(c.Uid),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &c).SignedString(key)
}

var parser = jwt.NewParser(
	jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	jwt.WithIssuer(tokenIssuer),
	jwt.WithExpirationRequired(),
	jwt.WithLeeway(5*time.Second),
)

func ParseToken(raw string) (*jwt.Token, *Claims, error) {
	if raw == "" {
		return nil, nil, ErrTokenMissing
	}
	key, err := secret()
	if err != nil {
		return nil, nil, err
	}
	c := &Claims{}
	tok, err := parser.ParseWithClaims(raw, c, func(*jwt.Token) (any, error) { return key, nil })
	if err != nil {
		return nil, nil, err
	}
	return tok, c, nil
}

// ParseBearer 兼容 "Bearer xxx" 与裸 token。
func ParseBearer(header string) (*Claims, error) {
	raw := strings.TrimSpace(header)
	if p, rest, ok := strings.Cut(raw, " "); ok && strings.EqualFold(p, "bearer") {
		raw = strings.TrimSpace(rest)
	}
	_, c, err := ParseToken(raw)
	return c, err
}
