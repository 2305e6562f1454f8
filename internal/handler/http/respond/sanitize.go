package respond

import (
	"regexp"
)

var (
	// Bearer トークン（JWT など）のパターン
	bearerTokenPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.~+/]+=*`)

	// データベースパスワードパターン（DSN内）
	dbPasswordPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)

	// key=value 形式の秘密情報（MinIOのシークレットキーなど）
	secretValuePattern = regexp.MustCompile(`(?i)(password|secret|secret_key|token)=\S+`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = secretValuePattern.ReplaceAllString(msg, "$1=****")

	return msg
}
