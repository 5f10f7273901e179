package keystore

type Config struct {
	Path          string `env:"KEYSTORE_PATH,required"`         // Path is the filesystem location of the JKS keystore file.
	StorePassword string `env:"KEYSTORE_PASSWORD,required"`     // StorePassword protects the keystore file as a whole.
	Alias         string `env:"KEYSTORE_KEY_ALIAS,required"`    // Alias names the private key entry inside the store.
	KeyPassword   string `env:"KEYSTORE_KEY_PASSWORD,required"` // KeyPassword protects the individual key entry.
}
