package config

import "fmt"

const (
	DEFAULT_HISTORY_TOKEN_LIMIT = 8_000
	DEFAULT_ADDR                = ":8080"
	DEFAULT_LOG_LEVEL           = "INFO"
	DEFAULT_SYSTEM_PROMPT       = "너는 마라야. 사용자의 하루 이야기를 들어주는 다정한 AI 친구로서 짧고 따뜻하게 반말로 대답해."

	ENV_PREFIX              = "MARA"
	ENV_ENDPOINT            = "ENDPOINT"
	ENV_PROVIDER            = "PROVIDER"
	ENV_MODEL               = "MODEL"
	ENV_SYSTEM_PROMPT       = "SYSTEM_PROMPT"
	ENV_GREETING            = "GREETING"
	ENV_HISTORY_TOKEN_LIMIT = "HISTORY_TOKEN_LIMIT"
	ENV_ADDR                = "ADDR"
	ENV_LOG_LEVEL           = "LOG_LEVEL"
	ENV_LOG_FILE            = "LOG_FILE"
)

func GetEnvWithPrefix(env string) string {
	return fmt.Sprintf("%s_%s", ENV_PREFIX, env)
}
