package clients

import "time"

const (
	AWS_MAX_ATTEMPTS     = 1
	APP_ID               = "rekognition-bot"
	USER_AGENT           = "rekognition-bot/1.0 (+https://github.com/spacesedan/rekognition-bot)"
	DOWNLOAD_TIMEOUT     = 30 * time.Second
	DISCORD_WATCH_STATUS = "faces"
)
