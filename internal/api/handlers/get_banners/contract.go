package get_banners

import "github.com/m04kA/SMC-CalendarService/internal/service/banners"

type BannerBoard interface {
	Active() []banners.Banner
}
