package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/Wissal65/RAG-Application/internal/adapter/utils"
	"github.com/Wissal65/RAG-Application/internal/config"
)

func injectTrace(re requestResponseStruct) requestResponseStruct {
	req := re.req
	if req == nil {
		//this is a bad request
		re.badRequest.httpCode = http.StatusBadRequest
		re.badRequest.errorMessage = "request is empty"
		re.badRequest.isBadRequest = true
		return re
	}
	trace := req.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	re.logger = re.logger.With("traceId", trace)
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set(`X-Trace-Id`, trace)
	re.req = req.WithContext(ctx)

	return re
}

func authenticate(re requestResponseStruct) requestResponseStruct {
	re.logger.Debug("Authenticating request")

	userId, ok := verifyBearerToken(re.req.Header.Get("Authorization"))
	if !ok {
		re.badRequest.isBadRequest = true
		re.badRequest.errorMessage = "invalid or missing token"
		re.badRequest.httpCode = http.StatusUnauthorized
		return re
	}

	ctx := context.WithValue(re.req.Context(), config.USER_ID_KEY, userId)
	re.req = re.req.WithContext(ctx)
	re.logger.Debug("Authorized", "userId", userId)
	return re
}

func verifyBearerToken(authHeader string) (string, bool) {
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	if authService == nil {
		return "", false
	}
	userId, err := authService.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return "", false
	}
	return userId, true
}

func rateLimiter(re requestResponseStruct) requestResponseStruct {
	ip, _, err := net.SplitHostPort(re.req.RemoteAddr)
	if err != nil {
		ip = re.req.RemoteAddr
	}

	if !limiterInstance.GetLimiter(ip).Allow() {
		re.logger.Error("Too many requests", "Rate Limiter exceeded", ip)
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			errorMessage: "Rate limit exceeded. Slow down bruh",
		}
		return re
	}
	return re
}
