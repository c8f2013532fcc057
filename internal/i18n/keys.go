package i18n

// Key names a translatable string by its dotted path.
type Key string

const (
	CommonAdd       Key = "common.add"
	CommonCancel    Key = "common.cancel"
	CommonDelete    Key = "common.delete"
	CommonFamily    Key = "common.family"
	CommonFrequency Key = "common.frequency"
	CommonHistory   Key = "common.history"
	CommonLogin     Key = "common.login"
	CommonLogout    Key = "common.logout"
	CommonStore     Key = "common.store"
	CommonTimes     Key = "common.times"
	CommonBack      Key = "common.back"
	CommonUnknown   Key = "common.unknown"
	CommonLocalOnly Key = "common.localOnly"

	HomeTitle           Key = "home.title"
	HomeDescription     Key = "home.description"
	HomeYourName        Key = "home.yourName"
	HomeEnterName       Key = "home.enterName"
	HomeFamilyCode      Key = "home.familyCode"
	HomeEnterFamilyCode Key = "home.enterFamilyCode"
	HomeError           Key = "home.error"

	StoresAddFirstStore           Key = "storesDashboard.addFirstStore"
	StoresAddNewStore             Key = "storesDashboard.addNewStore"
	StoresCreateNewStore          Key = "storesDashboard.createNewStore"
	StoresDeleteStore             Key = "storesDashboard.deleteStore"
	StoresDeleteStoreConfirmation Key = "storesDashboard.deleteStoreConfirmation"
	StoresEnterStoreDescription   Key = "storesDashboard.enterStoreDescription"
	StoresEnterStoreName          Key = "storesDashboard.enterStoreName"
	StoresNoStores                Key = "storesDashboard.noStores"
	StoresStoreColor              Key = "storesDashboard.storeColor"
	StoresStoreDescription        Key = "storesDashboard.storeDescription"
	StoresStoreName               Key = "storesDashboard.storeName"
	StoresViewList                Key = "storesDashboard.viewList"
	StoresSummary                 Key = "storesDashboard.summary"
	StoresCreateError             Key = "storesDashboard.createError"
	StoresDeleteError             Key = "storesDashboard.deleteError"

	ListAddItem       Key = "shoppingList.addItem"
	ListAddItemsAbove Key = "shoppingList.addItemsAbove"
	ListEnterItemName Key = "shoppingList.enterItemName"
	ListEnterNotes    Key = "shoppingList.enterNotes"
	ListItemName      Key = "shoppingList.itemName"
	ListNoItems       Key = "shoppingList.noItems"
	ListNotes         Key = "shoppingList.notes"
	ListShoppingList  Key = "shoppingList.shoppingList"
	ListTapToPurchase Key = "shoppingList.tapToPurchase"

	HistoryAllPurchases      Key = "purchaseHistory.allPurchases"
	HistoryByBuyer           Key = "purchaseHistory.byBuyer"
	HistoryDate              Key = "purchaseHistory.date"
	HistoryItems             Key = "purchaseHistory.items"
	HistoryName              Key = "purchaseHistory.name"
	HistoryNoPurchaseHistory Key = "purchaseHistory.noPurchaseHistory"
	HistorySearchItems       Key = "purchaseHistory.searchItems"
	HistoryReAdd             Key = "purchaseHistory.reAdd"
	HistoryReAdded           Key = "purchaseHistory.reAdded"
	HistoryTitle             Key = "purchaseHistory.title"
	HistoryDeleteError       Key = "purchaseHistory.deleteError"

	SummaryTitle   Key = "summaryList.title"
	SummaryNoItems Key = "summaryList.noItems"
)

// String returns the dotted path.
func (k Key) String() string { return string(k) }
