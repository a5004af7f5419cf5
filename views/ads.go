package views

import (
	"servicehub/models"
	"servicehub/services/ads"
)

type BannerView struct {
	Visible bool        `json:"visible"`
	Banner  *ads.Banner `json:"banner,omitempty"`
}

func NewBannerView(state models.SessionState) BannerView {
	if !ads.BannerVisible(state) {
		return BannerView{}
	}
	b := ads.DefaultBanner
	return BannerView{Visible: true, Banner: &b}
}

type VideoAdView struct {
	Creative ads.Banner       `json:"creative"`
	State    ads.VideoAdState `json:"state"`
}

func NewVideoAdView(state ads.VideoAdState) VideoAdView {
	return VideoAdView{Creative: ads.VideoCreative, State: state}
}
