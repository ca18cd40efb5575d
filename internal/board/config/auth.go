package config

// AuthConfig содержит настройки проверки JWT. Пустой SecretKey отключает проверку.
type AuthConfig struct {
	SecretKey  string `yaml:"secret_key" env:"NOTEBOARD_AUTH_SECRET"`
	CookieName string `yaml:"cookie_name" env:"NOTEBOARD_AUTH_COOKIE" env-default:"token"`
	Issuer     string `yaml:"issuer" env:"NOTEBOARD_AUTH_ISSUER"`
}

// Enabled сообщает, включена ли проверка токенов.
func (c *AuthConfig) Enabled() bool {
	return c.SecretKey != ""
}
