package kommo

type contact struct {
	ID int `json:"id"`
}

type contactsResponse struct {
	Embedded struct {
		Contacts []contact `json:"contacts"`
	} `json:"_embedded"`
}

type leadsResponse struct {
	Embedded struct {
		Leads []struct {
			ID int `json:"id"`
		} `json:"leads"`
	} `json:"_embedded"`
}
