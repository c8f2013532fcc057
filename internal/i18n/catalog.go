package i18n

import "golang.org/x/text/language"

var catalan = map[Key]string{
	CommonAdd:       "Afegir",
	CommonCancel:    "Cancel·lar",
	CommonDelete:    "Eliminar",
	CommonFamily:    "Família",
	CommonFrequency: "Freqüència",
	CommonHistory:   "Historial",
	CommonLogin:     "Entrar",
	CommonLogout:    "Tancar sessió",
	CommonStore:     "Botiga",
	CommonTimes:     "%d vegades",
	CommonBack:      "Tornar",
	CommonUnknown:   "Desconegut",
	CommonLocalOnly: "No desat",

	HomeTitle:           "Llista de la compra familiar",
	HomeDescription:     "Comparteix les llistes de la compra amb la teva família",
	HomeYourName:        "El teu nom",
	HomeEnterName:       "Introdueix el teu nom",
	HomeFamilyCode:      "Codi familiar",
	HomeEnterFamilyCode: "Introdueix el codi familiar",
	HomeError:           "Si us plau, introdueix el teu nom i el codi familiar",

	StoresAddFirstStore:           "Afegeix la teva primera botiga",
	StoresAddNewStore:             "Afegir botiga",
	StoresCreateNewStore:          "Crear una botiga nova",
	StoresDeleteStore:             "Eliminar botiga",
	StoresDeleteStoreConfirmation: "Segur que vols eliminar %s? Se n'esborraran la llista i l'historial.",
	StoresEnterStoreDescription:   "Introdueix una descripció",
	StoresEnterStoreName:          "Introdueix el nom de la botiga",
	StoresNoStores:                "Encara no hi ha botigues",
	StoresStoreColor:              "Color",
	StoresStoreDescription:        "Descripció",
	StoresStoreName:               "Nom de la botiga",
	StoresViewList:                "Veure llista",
	StoresSummary:                 "Llista resum",
	StoresCreateError:             "Error afegint la botiga: %s",
	StoresDeleteError:             "Error eliminant la botiga: %s",

	ListAddItem:       "Afegir article",
	ListAddItemsAbove: "Afegeix articles a dalt",
	ListEnterItemName: "Introdueix el nom de l'article",
	ListEnterNotes:    "Notes opcionals",
	ListItemName:      "Article",
	ListNoItems:       "No hi ha articles a la llista",
	ListNotes:         "Notes",
	ListShoppingList:  "Llista de la compra",
	ListTapToPurchase: "Toca un article per marcar-lo com a comprat",

	HistoryAllPurchases:      "Totes les compres",
	HistoryByBuyer:           "Per comprador",
	HistoryDate:              "Data",
	HistoryItems:             "articles",
	HistoryName:              "Nom",
	HistoryNoPurchaseHistory: "Encara no hi ha historial de compres",
	HistorySearchItems:       "Cerca articles",
	HistoryReAdd:             "Tornar a la llista",
	HistoryReAdded:           "Afegit a la llista",
	HistoryTitle:             "Historial de %s",
	HistoryDeleteError:       "Error eliminant l'article de l'historial: %s",

	SummaryTitle:   "Llista resum",
	SummaryNoItems: "No hi ha articles pendents a cap botiga",
}

var english = map[Key]string{
	CommonAdd:       "Add",
	CommonCancel:    "Cancel",
	CommonDelete:    "Delete",
	CommonFamily:    "Family",
	CommonFrequency: "Frequency",
	CommonHistory:   "History",
	CommonLogin:     "Log in",
	CommonLogout:    "Log out",
	CommonStore:     "Store",
	CommonTimes:     "%d times",
	CommonBack:      "Back",
	CommonUnknown:   "Unknown",
	CommonLocalOnly: "Not saved",

	HomeTitle:           "Family Shopping List",
	HomeDescription:     "Share shopping lists with your family",
	HomeYourName:        "Your name",
	HomeEnterName:       "Enter your name",
	HomeFamilyCode:      "Family code",
	HomeEnterFamilyCode: "Enter your family code",
	HomeError:           "Please enter your name and family code",

	StoresAddFirstStore:           "Add your first store",
	StoresAddNewStore:             "Add store",
	StoresCreateNewStore:          "Create a new store",
	StoresDeleteStore:             "Delete store",
	StoresDeleteStoreConfirmation: "Delete %s? Its list and history will be removed.",
	StoresEnterStoreDescription:   "Enter a description",
	StoresEnterStoreName:          "Enter the store name",
	StoresNoStores:                "No stores yet",
	StoresStoreColor:              "Color",
	StoresStoreDescription:        "Description",
	StoresStoreName:               "Store name",
	StoresViewList:                "View list",
	StoresSummary:                 "Summary list",
	StoresCreateError:             "Error adding store: %s",
	StoresDeleteError:             "Error deleting store: %s",

	ListAddItem:       "Add item",
	ListAddItemsAbove: "Add items above",
	ListEnterItemName: "Enter item name",
	ListEnterNotes:    "Optional notes",
	ListItemName:      "Item",
	ListNoItems:       "No items on the list",
	ListNotes:         "Notes",
	ListShoppingList:  "Shopping list",
	ListTapToPurchase: "Tap an item to mark it purchased",

	HistoryAllPurchases:      "All purchases",
	HistoryByBuyer:           "By buyer",
	HistoryDate:              "Date",
	HistoryItems:             "items",
	HistoryName:              "Name",
	HistoryNoPurchaseHistory: "No purchase history yet",
	HistorySearchItems:       "Search items",
	HistoryReAdd:             "Add back to list",
	HistoryReAdded:           "Added to list",
	HistoryTitle:             "%s history",
	HistoryDeleteError:       "Error deleting history entry: %s",

	SummaryTitle:   "Summary list",
	SummaryNoItems: "No pending items in any store",
}

// DefaultLanguage is the language the catalogs fall back to.
var DefaultLanguage = language.Catalan

var catalogs = map[language.Tag]map[Key]string{
	language.Catalan: catalan,
	language.English: english,
}
