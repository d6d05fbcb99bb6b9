package storage

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/argon2"
)

const (
	// encryptionMagic is prepended to encrypted backups for
	// identification.
	encryptionMagic = "DETRENC1"

	// Argon2id parameters (RFC 9106 recommendations).
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32 // 256 bits for AES-256

	saltLength = 32
)

// Backup copies the database into backupDir, optionally encrypting it
// with a password. The snapshot is taken with VACUUM INTO, which is
// atomic and needs no exclusive lock. Returns the backup file path.
func (s *Store) Backup(backupDir, password string) (string, error) {
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(s.db.path), "backups")
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("backup_%s.db", time.Now().Format("20060102_150405"))
	backupPath := filepath.Join(backupDir, name)

	if _, err := s.db.conn.Exec(fmt.Sprintf("VACUUM INTO %q", backupPath)); err != nil {
		return "", fmt.Errorf("vacuum into backup: %w", err)
	}

	if password == "" {
		return backupPath, nil
	}

	plaintext, err := os.ReadFile(backupPath)
	if err != nil {
		return "", fmt.Errorf("read backup for encryption: %w", err)
	}
	encrypted, err := encryptData(plaintext, password)
	if err != nil {
		return "", err
	}
	encPath := backupPath + ".enc"
	if err := os.WriteFile(encPath, encrypted, 0o600); err != nil {
		return "", fmt.Errorf("write encrypted backup: %w", err)
	}
	if err := os.Remove(backupPath); err != nil {
		return "", fmt.Errorf("remove plaintext backup: %w", err)
	}
	return encPath, nil
}

// RestoreBackup decrypts (when needed) and verifies a backup file,
// writing the plain database to destPath. The live database must be
// closed before the restored file is put in its place.
func RestoreBackup(backupPath, destPath, password string) error {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	if bytes.HasPrefix(data, []byte(encryptionMagic)) {
		if password == "" {
			return fmt.Errorf("backup %s is encrypted, password required", backupPath)
		}
		data, err = decryptData(data, password)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(destPath, data, 0o600); err != nil {
		return fmt.Errorf("write restored database: %w", err)
	}

	// Integrity check on the restored file.
	conn, err := sql.Open("sqlite", destPath)
	if err != nil {
		return fmt.Errorf("open restored database: %w", err)
	}
	defer func() { _ = conn.Close() }()
	var result string
	if err := conn.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil || result != "ok" {
		return fmt.Errorf("restored database failed integrity check: %v %s", err, result)
	}
	return nil
}

// IsEncryptedBackup reports whether the file carries the encrypted
// backup header.
func IsEncryptedBackup(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open backup: %w", err)
	}
	defer func() { _ = f.Close() }()
	header := make([]byte, len(encryptionMagic))
	if _, err := f.Read(header); err != nil {
		return false, nil
	}
	return string(header) == encryptionMagic, nil
}

func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

// encryptData seals plaintext with AES-256-GCM under an argon2id
// password-derived key. Layout: magic || salt || nonce || ciphertext.
func encryptData(plaintext []byte, password string) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, len(encryptionMagic)+len(salt)+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, encryptionMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, nil)
	return out, nil
}

func decryptData(encrypted []byte, password string) ([]byte, error) {
	encrypted = encrypted[len(encryptionMagic):]
	if len(encrypted) < saltLength {
		return nil, fmt.Errorf("encrypted backup too short")
	}
	salt := encrypted[:saltLength]
	encrypted = encrypted[saltLength:]

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	if len(encrypted) < gcm.NonceSize() {
		return nil, fmt.Errorf("encrypted backup too short for nonce")
	}
	nonce := encrypted[:gcm.NonceSize()]
	ciphertext := encrypted[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed (wrong password or corrupted backup): %w", err)
	}
	return plaintext, nil
}
