package signal

const maxSignal Signal = 128
