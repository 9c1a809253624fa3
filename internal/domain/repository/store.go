package repository

// Store bundles one backend's implementations of every repository. The server builds exactly
// one Store at startup from STORAGE_BACKEND.
type Store struct {
	Users         UserRepository
	Categories    CategoryRepository
	Products      ProductRepository
	Customers     CustomerRepository
	Orders        OrderRepository
	Withdrawals   WithdrawRepository
	Ledger        Ledger
	Notifications NotificationRepository
	Banners       BannerRepository
	Carts         CartRepository
	SavedProducts SavedProductRepository
	Settings      SettingRepository
}
