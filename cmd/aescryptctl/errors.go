package main

import "errors"

var (
	errMissingPassphrase = errors.New("AESCRYPT_PASSPHRASE is not set")
	errPassphraseTooLong = errors.New("passphrase exceeds 32 characters")
	errPassphraseCharset = errors.New("passphrase must be ASCII alphanumeric")
)
