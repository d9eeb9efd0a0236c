package runtime

const (
	accountStorageOverhead  = 128
	lamportsPerByteYear     = 3480
	exemptionThresholdYears = 2
)

// RentExemptMinimum is the balance an account of space bytes needs to be rent exempt.
func RentExemptMinimum(space uint64) uint64 {
	return (accountStorageOverhead + space) * lamportsPerByteYear * exemptionThresholdYears
}
