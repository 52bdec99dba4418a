package utils

// Paginate menghitung offset+limit dari query page/per_page.
func Paginate(page, perPage int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 10
	}
	return (page - 1) * perPage, perPage
}
