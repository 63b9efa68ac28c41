package crypto

// 原语导出名
//
// 返回缓冲区的导出第一个参数是结果指针；每个缓冲区参数占 (ptr, len) 两个槽位。
const (
	ExportBlake2b   = "ext_blake2b"   // (ret, data, key, size)
	ExportKeccak256 = "ext_keccak256" // (ret, data)
	ExportSha512    = "ext_sha512"    // (ret, data)
	ExportTwox      = "ext_twox"      // (ret, data, rounds)

	ExportPbkdf2 = "ext_pbkdf2" // (ret, data, salt, rounds)
	ExportScrypt = "ext_scrypt" // (ret, password, salt, log2n, r, p)

	ExportEdFromSeed = "ext_ed_from_seed" // (ret, seed)
	ExportEdSign     = "ext_ed_sign"      // (ret, pub, sec, msg)
	ExportEdVerify   = "ext_ed_verify"    // (sig, msg, pub) -> i32

	ExportSrFromSeed = "ext_sr_from_seed" // (ret, seed)
	ExportSrSign     = "ext_sr_sign"      // (ret, pub, sec, msg)
	ExportSrVerify   = "ext_sr_verify"    // (sig, msg, pub) -> i32

	ExportSecpFromSeed = "ext_secp_from_seed" // (ret, seed)
	ExportSecpSign     = "ext_secp_sign"      // (ret, hash, sec)
	ExportSecpRecover  = "ext_secp_recover"   // (ret, hash, sig, recid)
	ExportSecpExpand   = "ext_secp_expand"    // (ret, pub)
	ExportSecpCompress = "ext_secp_compress"  // (ret, pub)

	ExportBip39Generate     = "ext_bip39_generate"       // (ret, words)
	ExportBip39ToEntropy    = "ext_bip39_to_entropy"     // (ret, phrase)
	ExportBip39ToMiniSecret = "ext_bip39_to_mini_secret" // (ret, phrase, password)
	ExportBip39ToSeed       = "ext_bip39_to_seed"        // (ret, phrase, password)
	ExportBip39Validate     = "ext_bip39_validate"       // (phrase) -> i32
)

// SubstrateSigningContext sr25519 签名上下文
const SubstrateSigningContext = "substrate"
