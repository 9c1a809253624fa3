package entity

import "time"

const (
	SettingCategoryDelivery = "delivery"
	SettingCategoryContact  = "contact"
	SettingCategoryGeneral  = "general"

	DeliveryPriceDefaultKey = "delivery_price_default"
)

type AppSetting struct {
	Key       string    `json:"key" firestore:"key"`
	Value     string    `json:"value" firestore:"value"`
	Category  string    `json:"category" firestore:"category"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// DeliveryPriceKey is the settings key holding the delivery price for a province.
func DeliveryPriceKey(province string) string {
	return "delivery_price_" + province
}
