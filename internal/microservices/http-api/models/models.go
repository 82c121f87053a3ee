package models

// All returns every model managed by the catalog, in migration order.
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Genre{},
		&Actor{},
		&Movie{},
		&MovieShot{},
		&RatingStar{},
		&Rating{},
		&Review{},
		&StaffUser{},
		&RefreshToken{},
	}
}
