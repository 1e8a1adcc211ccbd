package entity

// Models lists every persisted entity, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&VerificationCode{},
		&City{},
		&Review{},
		&Metadata{},
		&About{},
		&AboutValue{},
		&Contact{},
		&DevisAsk{},
	}
}
