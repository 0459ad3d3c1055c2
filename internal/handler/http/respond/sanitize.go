package respond

import "regexp"

type maskRule struct {
	re   *regexp.Regexp
	repl string
}

// maskRules は上から順に適用する。sk-ant- は sk- より先。
var maskRules = []maskRule{
	{regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`), "sk-ant-****"},
	// マスク済み (sk-****) には再マッチしない
	{regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`), "sk-****"},
	{regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`), "://$1:****@"},
	// webhook URL はパス自体がトークン
	{regexp.MustCompile(`hooks\.slack\.com/services/[A-Za-z0-9/_-]+`), "hooks.slack.com/services/****"},
	{regexp.MustCompile(`discord(?:app)?\.com/api/webhooks/[A-Za-z0-9/_-]+`), "discord.com/api/webhooks/****"},
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._~+/=-]+`), "Bearer ****"},
	{regexp.MustCompile(`(?i)\b(api_?key|token|secret|password)=[^&\s]+`), "$1=****"},
}

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error())
}

// SanitizeString masks API keys, DSN passwords, webhook tokens, bearer
// tokens and credential query parameters in msg.
func SanitizeString(msg string) string {
	for _, r := range maskRules {
		msg = r.re.ReplaceAllString(msg, r.repl)
	}
	return msg
}
