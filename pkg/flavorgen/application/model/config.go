package model

type Config struct {
	Flavor   Flavor
	Upstream Upstream
	Image    Image
}
