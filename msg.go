package workgrid

import nt "workgrid/entity"

// rowsMsg contains fetched rows, or why there are none
type rowsMsg struct {
	rows []nt.Row
	err  error
}

// deletedMsg reports rows removed from the store
type deletedMsg struct {
	count int
}
